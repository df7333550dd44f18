package codec

import "github.com/indigo-web/utils/strcomp"

// Codec is a content coding able to compress a whole body at once.
type Codec interface {
	// Token returns a coding token associated with the codec itself, as it appears in
	// Accept-Encoding and Content-Encoding headers.
	Token() string
	Compress(body []byte) ([]byte, error)
}

// Choose returns the first codec whose token is contained in tokens. Coding tokens are
// case-insensitive.
func Choose(tokens []string, codecs ...Codec) (Codec, bool) {
	for _, codec := range codecs {
		for _, token := range tokens {
			if strcomp.EqualFold(token, codec.Token()) {
				return codec, true
			}
		}
	}

	return nil, false
}
