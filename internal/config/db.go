package config

const (
	// GormEngineMySQL selects the mysql gorm driver.
	GormEngineMySQL = "mysql"

	// GormEnginePostgres selects the postgres gorm driver.
	GormEnginePostgres = "postgres"

	// GormEngineSQLite selects the pure go sqlite gorm driver.
	GormEngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or file path for sqlite
	GormEngine string // mysql, postgres or sqlite
	LogLevel   string // gorm logger level: silent, error, warn, info
}
