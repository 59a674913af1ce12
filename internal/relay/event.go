package relay

import "net/http"

// Event is the inbound request as delivered by the front door. Both API Gateway encodings are
// accepted: REST APIs set httpMethod, HTTP APIs set requestContext.http.method.
type Event struct {
	HTTPMethod      string            `json:"httpMethod"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	RequestContext  RequestContext    `json:"requestContext"`
}

type RequestContext struct {
	RequestID string      `json:"requestId"`
	HTTP      HTTPContext `json:"http"`
}

type HTTPContext struct {
	Method string `json:"method"`
}

// Method returns the request method from whichever encoding is populated.
func (e Event) Method() string {
	if e.HTTPMethod != "" {
		return e.HTTPMethod
	}
	return e.RequestContext.HTTP.Method
}

// IsPreflight reports a CORS preflight in either encoding.
func (e Event) IsPreflight() bool {
	return e.HTTPMethod == http.MethodOptions || e.RequestContext.HTTP.Method == http.MethodOptions
}
