package enum

// ABCCategory is the value-based prioritisation class of a deadstock item
type ABCCategory string

const (
	ABCCategoryA ABCCategory = "A"
	ABCCategoryB ABCCategory = "B"
	ABCCategoryC ABCCategory = "C"
)

// Priority is the action priority attached to an ABC class
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the numeric weight used when ranking by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}
