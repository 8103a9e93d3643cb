// Package image stores user profile images in an object-storage bucket.
//
// The Service validates uploads by file extension (jpg, jpeg, png, gif),
// provisions the bucket idempotently (eagerly at construction or lazily
// before each store, depending on configuration), streams content to the
// backing store in 10 MiB parts and derives two kinds of access URL:
//
//   - Canonical URL: endpoint/bucket/object, valid as long as the object
//     exists and the endpoint is reachable.
//   - Presigned URL: time-limited signed GET, regenerable at any time and
//     issued without checking that the object exists.
//
// Object names are chosen by the caller; writing an existing name replaces
// the object. Callers that name objects <user-id>.<extension> therefore keep
// exactly one current image per user.
//
// Failures are typed: InvalidExtensionError before any I/O,
// StorageUnavailableError for bucket and transfer faults, PresignError for
// signing faults. The service performs no internal retries and adds no
// locking; the bucket-create race between concurrent first writers is left
// to the backing store's idempotent create.
package image
