package models

func StringPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }

// BoolOr returns *p, or def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
