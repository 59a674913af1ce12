package relay

// CORS is the fixed header set attached to every response.
type CORS struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

func DefaultCORS(allowOrigin string) CORS {
	return CORS{
		AllowOrigin:  allowOrigin,
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type,Accept",
	}
}

// Headers returns a fresh map so callers may add to it.
func (c CORS) Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  c.AllowOrigin,
		"Access-Control-Allow-Methods": c.AllowMethods,
		"Access-Control-Allow-Headers": c.AllowHeaders,
	}
}
