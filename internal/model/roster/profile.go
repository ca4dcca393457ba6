package roster

// Profile captures one role-specialized agent together with the single
// task it owns. Role/Goal/Backstory become the system prompt; Task is the
// user-side instruction with {placeholder} slots filled at dispatch time.
type Profile struct {
	ID              string   `json:"id"`
	Role            string   `json:"role"`
	Goal            string   `json:"goal"`
	Backstory       string   `json:"backstory,omitempty"`
	Task            string   `json:"task"`
	ExpectedOutput  string   `json:"expectedOutput"`
	AllowDelegation bool     `json:"allowDelegation,omitempty"`
	Tools           []string `json:"tools,omitempty"`
}

// PipelineOrder is the fixed execution order of the full diagnostic pass.
var PipelineOrder = []string{
	"triage", "lab", "image", "research", "symptom",
	"diet", "wellness", "followup", "report", "vision", "collab",
}
