package metrics

// Attribute keys shared by all instruments.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrMutation  = "mutation"
	AttrOperation = "operation"
)
