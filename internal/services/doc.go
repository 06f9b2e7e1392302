// Package services defines shared error markers and context helpers consumed
// by the poller, the feed client and the publishers.
//
// Key responsibilities:
//   - Context helpers that stamp the poll cycle correlation id and the
//     submission currently being processed, for structured logging.
//   - Structured error markers plus the Wrap helper so callers can tell a
//     transient feed failure from a skipped post or a fatal misconfiguration.
//   - Classify, which maps an error to the event type and operator hint used
//     by the top-level supervisor log line.
package services
