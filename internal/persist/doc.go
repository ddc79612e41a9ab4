// Package persist records what a conversion run did: backups of retired
// originals and a JSON manifest of generated, skipped and retired documents.
package persist
