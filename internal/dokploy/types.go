package dokploy

import "encoding/json"

type Domain struct {
	ID              string `json:"domainId"`
	Host            string `json:"host"`
	Path            string `json:"path"`
	Port            int    `json:"port"`
	HTTPS           bool   `json:"https"`
	CertificateType string `json:"certificateType,omitempty"`
}

type Application struct {
	ID          string   `json:"applicationId"`
	Name        string   `json:"name"`
	AppName     string   `json:"appName"`
	Description string   `json:"description,omitempty"`
	BuildType   string   `json:"buildType,omitempty"`
	Dockerfile  string   `json:"dockerfile,omitempty"`
	DockerImage string   `json:"dockerImage,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Branch      string   `json:"branch,omitempty"`
	BuildPath   string   `json:"buildPath,omitempty"`
	Command     string   `json:"command,omitempty"`
	Domains     []Domain `json:"domains,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	GithubID    string   `json:"githubId,omitempty"`
	RegistryID  string   `json:"registryId,omitempty"`
	ServerID    string   `json:"serverId,omitempty"`
}

type Compose struct {
	ID          string   `json:"composeId"`
	Name        string   `json:"name"`
	AppName     string   `json:"appName"`
	Description string   `json:"description,omitempty"`
	ComposeFile string   `json:"composeFile,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Branch      string   `json:"branch,omitempty"`
	Domains     []Domain `json:"domains,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// DatabaseKind tags a Database with the engine it runs. Each kind carries
// its own primary identifier field name in the Dokploy API.
type DatabaseKind string

const (
	Postgres DatabaseKind = "postgres"
	MySQL    DatabaseKind = "mysql"
	MariaDB  DatabaseKind = "mariadb"
	Mongo    DatabaseKind = "mongo"
	Redis    DatabaseKind = "redis"
)

// DatabaseKinds lists every kind in display order.
var DatabaseKinds = []DatabaseKind{Postgres, MySQL, MariaDB, Mongo, Redis}

// IDField returns the JSON field holding the primary identifier.
func (k DatabaseKind) IDField() string {
	return string(k) + "Id"
}

// Label returns the engine's display name.
func (k DatabaseKind) Label() string {
	switch k {
	case Postgres:
		return "PostgreSQL"
	case MySQL:
		return "MySQL"
	case MariaDB:
		return "MariaDB"
	case Mongo:
		return "MongoDB"
	case Redis:
		return "Redis"
	default:
		return string(k)
	}
}

// IDLabel names the identifier in copy notifications, e.g. "Postgres ID".
func (k DatabaseKind) IDLabel() string {
	switch k {
	case Postgres:
		return "Postgres ID"
	case MySQL:
		return "MySQL ID"
	case MariaDB:
		return "MariaDB ID"
	case Mongo:
		return "Mongo ID"
	case Redis:
		return "Redis ID"
	default:
		return string(k) + " ID"
	}
}

func (k DatabaseKind) Icon() string {
	switch k {
	case Postgres:
		return "🐘"
	case MySQL:
		return "🐬"
	case MariaDB:
		return "🗄️"
	case Mongo:
		return "🍃"
	case Redis:
		return "🔴"
	default:
		return "💾"
	}
}

// Database is one database instance. Credentials returned by the API are
// never decoded into this type.
type Database struct {
	Kind         DatabaseKind
	ID           string
	Name         string
	AppName      string
	Description  string
	DatabaseName string
	DatabaseUser string
	DockerImage  string
	Command      string
	CreatedAt    string
}

// MarshalJSON writes the Dokploy wire shape, with the identifier under the
// kind's own field (e.g. "postgresId").
func (d Database) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		d.Kind.IDField(): d.ID,
		"name":           d.Name,
		"appName":        d.AppName,
	}
	for key, value := range map[string]string{
		"description":  d.Description,
		"databaseName": d.DatabaseName,
		"databaseUser": d.DatabaseUser,
		"dockerImage":  d.DockerImage,
		"command":      d.Command,
		"createdAt":    d.CreatedAt,
	} {
		if value != "" {
			out[key] = value
		}
	}
	return json.Marshal(out)
}

// databaseRecord is the wire shape shared by all five database lists.
type databaseRecord struct {
	PostgresID   string `json:"postgresId"`
	MySQLID      string `json:"mysqlId"`
	MariaDBID    string `json:"mariadbId"`
	MongoID      string `json:"mongoId"`
	RedisID      string `json:"redisId"`
	Name         string `json:"name"`
	AppName      string `json:"appName"`
	Description  string `json:"description"`
	DatabaseName string `json:"databaseName"`
	DatabaseUser string `json:"databaseUser"`
	DockerImage  string `json:"dockerImage"`
	Command      string `json:"command"`
	CreatedAt    string `json:"createdAt"`
}

// toDatabase reads the identifier from the field owned by kind. An empty
// value stays empty.
func (r databaseRecord) toDatabase(kind DatabaseKind) Database {
	var id string
	switch kind {
	case Postgres:
		id = r.PostgresID
	case MySQL:
		id = r.MySQLID
	case MariaDB:
		id = r.MariaDBID
	case Mongo:
		id = r.MongoID
	case Redis:
		id = r.RedisID
	}
	return Database{
		Kind:         kind,
		ID:           id,
		Name:         r.Name,
		AppName:      r.AppName,
		Description:  r.Description,
		DatabaseName: r.DatabaseName,
		DatabaseUser: r.DatabaseUser,
		DockerImage:  r.DockerImage,
		Command:      r.Command,
		CreatedAt:    r.CreatedAt,
	}
}

type Environment struct {
	ID           string        `json:"environmentId"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Applications []Application `json:"applications,omitempty"`
	Compose      []Compose     `json:"compose,omitempty"`
	Postgres     []Database    `json:"postgres,omitempty"`
	MySQL        []Database    `json:"mysql,omitempty"`
	MariaDB      []Database    `json:"mariadb,omitempty"`
	Mongo        []Database    `json:"mongo,omitempty"`
	Redis        []Database    `json:"redis,omitempty"`
}

// UnmarshalJSON tags every database with the kind of the list it came from.
func (e *Environment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string           `json:"environmentId"`
		Name         string           `json:"name"`
		Description  string           `json:"description"`
		Applications []Application    `json:"applications"`
		Compose      []Compose        `json:"compose"`
		Postgres     []databaseRecord `json:"postgres"`
		MySQL        []databaseRecord `json:"mysql"`
		MariaDB      []databaseRecord `json:"mariadb"`
		Mongo        []databaseRecord `json:"mongo"`
		Redis        []databaseRecord `json:"redis"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Environment{
		ID:           raw.ID,
		Name:         raw.Name,
		Description:  raw.Description,
		Applications: raw.Applications,
		Compose:      raw.Compose,
		Postgres:     convertDatabases(raw.Postgres, Postgres),
		MySQL:        convertDatabases(raw.MySQL, MySQL),
		MariaDB:      convertDatabases(raw.MariaDB, MariaDB),
		Mongo:        convertDatabases(raw.Mongo, Mongo),
		Redis:        convertDatabases(raw.Redis, Redis),
	}
	return nil
}

func convertDatabases(records []databaseRecord, kind DatabaseKind) []Database {
	if records == nil {
		return nil
	}
	out := make([]Database, len(records))
	for i, r := range records {
		out[i] = r.toDatabase(kind)
	}
	return out
}

// DatabasesOf returns the environment's databases of one kind.
func (e Environment) DatabasesOf(kind DatabaseKind) []Database {
	switch kind {
	case Postgres:
		return e.Postgres
	case MySQL:
		return e.MySQL
	case MariaDB:
		return e.MariaDB
	case Mongo:
		return e.Mongo
	case Redis:
		return e.Redis
	default:
		return nil
	}
}

// Databases returns every database in the environment in DatabaseKinds order.
func (e Environment) Databases() []Database {
	var all []Database
	for _, kind := range DatabaseKinds {
		all = append(all, e.DatabasesOf(kind)...)
	}
	return all
}

type Project struct {
	ID           string        `json:"projectId"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	Environments []Environment `json:"environments"`
}
