package project

import (
	"sort"
	"strings"
)

var secretMarkers = []string{"SECRET", "KEY", "TOKEN"}

type KVNamespace struct {
	Binding   string `json:"binding" toml:"binding"`
	ID        string `json:"id,omitempty" toml:"id"`
	PreviewID string `json:"preview_id,omitempty" toml:"preview_id"`
}

type DurableObject struct {
	Name        string `json:"name" toml:"name"`
	ClassName   string `json:"class_name" toml:"class_name"`
	ScriptName  string `json:"script_name,omitempty" toml:"script_name"`
	Environment string `json:"environment,omitempty" toml:"environment"`
}

type DurableObjects struct {
	Bindings []DurableObject `json:"bindings,omitempty" toml:"bindings"`
}

type R2Bucket struct {
	Binding           string `json:"binding" toml:"binding"`
	BucketName        string `json:"bucket_name,omitempty" toml:"bucket_name"`
	PreviewBucketName string `json:"preview_bucket_name,omitempty" toml:"preview_bucket_name"`
	Jurisdiction      string `json:"jurisdiction,omitempty" toml:"jurisdiction"`
}

type D1Database struct {
	Binding           string `json:"binding" toml:"binding"`
	DatabaseName      string `json:"database_name,omitempty" toml:"database_name"`
	DatabaseID        string `json:"database_id,omitempty" toml:"database_id"`
	PreviewDatabaseID string `json:"preview_database_id,omitempty" toml:"preview_database_id"`
	MigrationsDir     string `json:"migrations_dir,omitempty" toml:"migrations_dir"`
}

type QueueProducer struct {
	Binding       string `json:"binding" toml:"binding"`
	Queue         string `json:"queue" toml:"queue"`
	DeliveryDelay int    `json:"delivery_delay,omitempty" toml:"delivery_delay"`
}

type QueueConsumer struct {
	Queue           string `json:"queue" toml:"queue"`
	MaxBatchSize    int    `json:"max_batch_size,omitempty" toml:"max_batch_size"`
	MaxRetries      int    `json:"max_retries,omitempty" toml:"max_retries"`
	DeadLetterQueue string `json:"dead_letter_queue,omitempty" toml:"dead_letter_queue"`
}

type Queues struct {
	Producers []QueueProducer `json:"producers,omitempty" toml:"producers"`
	Consumers []QueueConsumer `json:"consumers,omitempty" toml:"consumers"`
}

type NamedBinding struct {
	Binding string `json:"binding" toml:"binding"`
}

type VectorizeIndex struct {
	Binding   string `json:"binding" toml:"binding"`
	IndexName string `json:"index_name" toml:"index_name"`
}

type Hyperdrive struct {
	Binding               string `json:"binding" toml:"binding"`
	ID                    string `json:"id" toml:"id"`
	LocalConnectionString string `json:"localConnectionString,omitempty" toml:"localConnectionString"`
}

type Workflow struct {
	Binding    string `json:"binding" toml:"binding"`
	Name       string `json:"name" toml:"name"`
	ClassName  string `json:"class_name" toml:"class_name"`
	ScriptName string `json:"script_name,omitempty" toml:"script_name"`
}

type MTLSCertificate struct {
	Binding       string `json:"binding" toml:"binding"`
	CertificateID string `json:"certificate_id" toml:"certificate_id"`
}

type DispatchNamespace struct {
	Binding   string `json:"binding" toml:"binding"`
	Namespace string `json:"namespace" toml:"namespace"`
}

// Bindings groups declared resources by category. Lists are never nil so the
// serialized form always carries every category.
type Bindings struct {
	KVNamespaces       []KVNamespace          `json:"kv_namespaces"`
	DurableObjects     []DurableObject        `json:"durable_objects"`
	R2Buckets          []R2Bucket             `json:"r2_buckets"`
	D1Databases        []D1Database           `json:"d1_databases"`
	Queues             []QueueProducer        `json:"queues"`
	AI                 []NamedBinding         `json:"ai"`
	Browser            []NamedBinding         `json:"browser"`
	Vectorize          []VectorizeIndex       `json:"vectorize"`
	Hyperdrive         []Hyperdrive           `json:"hyperdrive"`
	Workflows          []Workflow             `json:"workflows"`
	MTLSCertificates   []MTLSCertificate      `json:"mtls_certificates"`
	DispatchNamespaces []DispatchNamespace    `json:"dispatch_namespaces"`
	Vars               map[string]interface{} `json:"vars"`
	Secrets            []string               `json:"secrets"`
}

func EmptyBindings() Bindings {
	return Bindings{
		KVNamespaces:       []KVNamespace{},
		DurableObjects:     []DurableObject{},
		R2Buckets:          []R2Bucket{},
		D1Databases:        []D1Database{},
		Queues:             []QueueProducer{},
		AI:                 []NamedBinding{},
		Browser:            []NamedBinding{},
		Vectorize:          []VectorizeIndex{},
		Hyperdrive:         []Hyperdrive{},
		Workflows:          []Workflow{},
		MTLSCertificates:   []MTLSCertificate{},
		DispatchNamespaces: []DispatchNamespace{},
		Vars:               map[string]interface{}{},
		Secrets:            []string{},
	}
}

// LooksSecret matches names whose uppercased form carries a secret marker.
func LooksSecret(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range secretMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// SecretNames lists matching variable names, sorted; values are never read.
func SecretNames(vars map[string]interface{}) []string {
	result := []string{}
	for name := range vars {
		if LooksSecret(name) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

func classify(section *Section) Bindings {
	result := EmptyBindings()
	if section == nil {
		return result
	}
	result.KVNamespaces = append(result.KVNamespaces, section.KVNamespaces...)
	if section.DurableObjects != nil {
		result.DurableObjects = append(result.DurableObjects, section.DurableObjects.Bindings...)
	}
	result.R2Buckets = append(result.R2Buckets, section.R2Buckets...)
	result.D1Databases = append(result.D1Databases, section.D1Databases...)
	if section.Queues != nil {
		result.Queues = append(result.Queues, section.Queues.Producers...)
	}
	if section.AI != nil {
		result.AI = append(result.AI, *section.AI)
	}
	if section.Browser != nil {
		result.Browser = append(result.Browser, *section.Browser)
	}
	result.Vectorize = append(result.Vectorize, section.Vectorize...)
	result.Hyperdrive = append(result.Hyperdrive, section.Hyperdrive...)
	result.Workflows = append(result.Workflows, section.Workflows...)
	result.MTLSCertificates = append(result.MTLSCertificates, section.MTLSCertificates...)
	result.DispatchNamespaces = append(result.DispatchNamespaces, section.DispatchNamespaces...)
	for name, value := range section.Vars {
		result.Vars[name] = value
	}
	result.Secrets = SecretNames(result.Vars)
	return result
}
