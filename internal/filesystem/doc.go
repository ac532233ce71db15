// Package filesystem provides stat and open helpers with retry logic for
// NFS stale file handle errors.
package filesystem
