package interpreter

import "github.com/dirtybirdnj/gellyscape/contentstream"

func tokenize(s string) []contentstream.Token {
	return contentstream.Tokenize([]byte(s))
}
