package domain

// ChangeType indicates the type of change to a data file.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota
	// ChangeUpdated indicates a modified file.
	ChangeUpdated
	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// DataChange is a change to a file under the data directory.
type DataChange struct {
	Path string
	Type ChangeType
}
