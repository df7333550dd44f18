package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/minihttp/http/headers"
)

func Headers(n int) headers.Headers {
	hdrs := headers.New()

	for i := 0; i < n-1; i++ {
		hdrs.Set("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Set("Host", "localhost")
}

func HeadersBlock(hdrs headers.Headers) (buff []byte) {
	for _, key := range hdrs.Keys() {
		buff = append(buff, key+": "+hdrs[key]+"\r\n"...)
	}

	return buff
}

func Generate(method, uri string, hdrs headers.Headers, body string) (request []byte) {
	request = append(request, method+" /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)
	request = append(request, '\r', '\n')

	return append(request, body...)
}
