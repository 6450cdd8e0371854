// internal/config/database.go
package config

import (
	"fmt"
)

// DSN builds the libpq keyword/value connection string used by the gorm postgres driver.
func (d *DatabaseConfig) DSN() string {
	connectTimeout := int(d.QueryTimeout.Seconds())
	if connectTimeout < 1 {
		connectTimeout = 1
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode, connectTimeout,
	)
}

func (d *DatabaseConfig) InMemory() bool {
	return d.Driver == "memory"
}
