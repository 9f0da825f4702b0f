package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventConfigChanged EventType = "ConfigChanged"
	EventAppReady      EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	Candidates int
	Selected   []ID
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the selection needs to be persisted
type ConfigChangedEvent struct {
	Seq      uint64 // increases with every change; handlers may run out of order
	Selected []ID   // current selection, in selection order
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the picker is attached and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
