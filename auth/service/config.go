package service

type Config struct {
	// Driver selects the identity store: "sqlite" (default) or "postgres".
	Driver     string `toml:"driver"`
	SqliteFile string `toml:"sqlite_file"`

	// Token is the symmetric secret used to sign and verify bearer tokens.
	// The service refuses to start without it.
	Token string `toml:"token"`
	// Expiration is the token validity window, time.ParseDuration format.
	// Empty means 168h (7 days).
	Expiration string `toml:"expiration"`

	// AdminEmail/AdminUsername/AdminPassword describe the bootstrap admin
	// identity created on first start. Empty AdminEmail disables bootstrap.
	AdminEmail    string `toml:"admin_email"`
	AdminUsername string `toml:"admin_username"`
	AdminPassword string `toml:"admin_password"`

	Storage StorageConfig `toml:"db"`
}

type StorageConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	DBName   string `toml:"dbname"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}
