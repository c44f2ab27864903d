// internal/writer/builder.go
package writer

import "github.com/tamzrod/benchpsu/internal/schema"

// BuildRequest collects encoded schema writes into a Request.
// Later writes to the same address win.
func BuildRequest(writes ...schema.Write) Request {
	req := make(Request, len(writes))
	req.Add(writes...)
	return req
}

// Add assigns every write into r.
func (r Request) Add(writes ...schema.Write) {
	for _, w := range writes {
		r[w.Address] = w.Raw
	}
}
