package domain

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type ItemType string

const (
	TypeBug     ItemType = "Bug"
	TypeFeature ItemType = "Feature"
	TypeTask    ItemType = "Task"
)

type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"Low": true, "Medium": true, "High": true,
}

// ValidItemTypes is the canonical set of accepted card/issue type strings.
var ValidItemTypes = map[string]bool{
	"Bug": true, "Feature": true, "Task": true,
}
