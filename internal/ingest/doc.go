// Package ingest turns source documents into proptree entries.
//
// Each supported format has a proptree.Producer: PropertiesProducer for flat
// dot-delimited documents and YAMLProducer for nested YAML documents. Both
// attach to an entry every comment seen since the previous entry, so the
// tree builder stays agnostic of the source format.
package ingest
