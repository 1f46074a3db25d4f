package pagination

// Params represents limit/offset pagination parameters as accepted by the
// list endpoints. Limit defaults to 10 and offset to 0.
type Params struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// Default returns the default pagination values
func Default() *Params {
	return &Params{
		Limit:  10,
		Offset: 0,
	}
}

// Validate ensures pagination parameters are within valid ranges. There is
// no upper bound on limit; callers may request as many rows as they like.
func (p *Params) Validate() {
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
