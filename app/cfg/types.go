package cfg

type Cfg struct {
	// Storage configuration
	DBPath   string
	SeedsDir string

	// Application configuration
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// AI provider configuration
	GeminiAPIKey string
	GeminiModel  string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
