package types

// SQLCommandType is the command kind of a statement.
type SQLCommandType int

const (
	CommandUnknown SQLCommandType = iota
	CommandSelect
	CommandUpdate
	CommandDelete
	CommandInsert
)

func (t SQLCommandType) String() string {
	switch t {
	case CommandSelect:
		return "SELECT"
	case CommandUpdate:
		return "UPDATE"
	case CommandDelete:
		return "DELETE"
	case CommandInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// ExecutionLayer identifies which layer produced the statement.
type ExecutionLayer int

const (
	// LayerORM marks statements mediated by an ORM or mapper framework.
	LayerORM ExecutionLayer = iota
	// LayerDriver marks statements issued directly through a database driver.
	LayerDriver
)

func (l ExecutionLayer) String() string {
	if l == LayerDriver {
		return "DRIVER"
	}
	return "ORM"
}
