package font

// DecodeOperand converts a string operand in its lexical form, either
// <hex> or (literal), to raw bytes. Anything else is returned as is.
func DecodeOperand(raw string) []byte {
	n := len(raw)
	switch {
	case n >= 2 && raw[0] == '<' && raw[n-1] == '>':
		return DecodeHex(raw[1 : n-1])
	case n >= 2 && raw[0] == '(' && raw[n-1] == ')':
		return UnescapeLiteral(raw[1 : n-1])
	}
	return []byte(raw)
}

// DecodeHex decodes pairs of hex digits. Non-digit bytes are skipped and an
// odd final digit is padded with 0.
func DecodeHex(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	var hi byte
	half := false
	for i := 0; i < len(s); i++ {
		v, ok := hexValue(s[i])
		if !ok {
			continue
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out
}

// UnescapeLiteral resolves the backslash escapes of a literal string body
// (without its outer parentheses).
func UnescapeLiteral(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch next := s[i]; next {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '\r':
			// line continuation
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(next - '0')
			for k := 0; k < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; k++ {
				i++
				v = v*8 + int(s[i]-'0')
			}
			out = append(out, byte(v))
		default:
			// \( \) \\ and unknown escapes keep the escaped byte
			out = append(out, next)
		}
	}
	return out
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
