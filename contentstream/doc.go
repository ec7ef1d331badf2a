// Package contentstream tokenizes PDF content streams and groups the tokens
// into operations.
//
// Lexing is tolerant: unrecognized bytes are skipped and never produce an
// error, so a damaged stream yields whatever tokens could be matched.
//
//	for _, op := range contentstream.Parse(data) {
//	    switch op.Op {
//	    case contentstream.OpMoveTo:
//	        xy, ok := op.Numbers(2)
//	        ...
//	    case contentstream.OpUnknown:
//	        // op.Name holds the keyword
//	    }
//	}
//
// # Tokens
//
// Operands are kept in their lexical form. Numbers, names (with the leading
// '/'), literal strings (with parentheses and escapes), hex strings (with
// angle brackets, whitespace removed) and array brackets are pushed onto the
// operand stack as they are read. Arrays are not nested into a tree; a TJ
// operand is the flat sequence "[", elements..., "]".
//
// Comments run from '%' to end of line. Inline image data between ID and EI
// is skipped. Dictionaries (<< >>) are dropped; their keys and values still
// appear as individual operand tokens.
//
// # Operators
//
// [Op] is a closed enumeration of the operators defined for content
// streams. Keywords outside the set map to [OpUnknown]; the operand stack is
// cleared after them exactly as after a known operator.
package contentstream
