package core

// Configuration defines a whole presentation session
type Configuration struct {
	Time    TimeConfiguration
	Session SessionConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out.
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the window event poll interval in milliseconds
	EventPollDelay int
}

// SessionConfiguration is used to configure the driver binary. Validation
// layer loading is an explicit field here, resolved once at startup.
type SessionConfiguration struct {
	ScreenWidth  uint32
	ScreenHeight uint32

	DeviceExtensions []string

	// ShaderBundle names the compressed bundle draw content is loaded from
	ShaderBundle string

	DebugMode bool
}
