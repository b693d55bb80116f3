/*
 * Copyright (c) 2025, the Signet project.
 *
 * The Signet project licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package database

import (
	"database/sql"
	"fmt"

	"github.com/signet-id/signet/internal/system/config"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// NewIdentityDBClient opens the identity database described by the given
// data source and returns a client for it.
func NewIdentityDBClient(ds config.DataSource) (DBClientInterface, error) {
	driverName, dsn, err := resolveDSN(ds)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open the identity database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the identity database: %w", err)
	}

	return NewDBClient(db), nil
}

// resolveDSN builds the driver name and connection string for a data source.
func resolveDSN(ds config.DataSource) (string, string, error) {
	switch ds.Type {
	case dataSourceTypePostgres:
		dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			ds.Hostname, ds.Port, ds.Name, ds.Username, ds.Password, ds.SSLMode)
		if ds.Options != "" {
			dsn += " " + ds.Options
		}
		return "postgres", dsn, nil
	case dataSourceTypeSQLite:
		dsn := ds.Path
		if ds.Options != "" {
			dsn += "?" + ds.Options
		}
		return "sqlite", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported data source type: %s", ds.Type)
	}
}
