package lead

// Application kinds accepted by the lead-capture forms.
const (
	KindAmbassador  = "ambassador"
	KindDistributor = "distributor"
	KindCoaching    = "coaching"
)

// Application is a lead-capture submission. Details carries the
// kind-specific form fields without a fixed schema.
type Application struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

func validKind(kind string) bool {
	switch kind {
	case KindAmbassador, KindDistributor, KindCoaching:
		return true
	}
	return false
}
