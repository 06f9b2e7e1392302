// Package publisher delivers a finished digest file to its audience.
//
// Every backend implements Publisher. FromConfig selects one from the
// [publisher] section: Google Drive (uploaded as a Google Doc), an ntfy topic
// (sent as an attachment), a local outbox directory, or none. Failures are
// tagged with services.ErrPublish; the digest builder logs and absorbs them.
package publisher
