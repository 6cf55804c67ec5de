package commands

import "github.com/sbca/indy-go/pkg/indy"

// Blob storage commands. Both complete with a reader or writer handle.
const (
	OpenBlobStorageReader = "open_blob_storage_reader"
	OpenBlobStorageWriter = "open_blob_storage_writer"
)

func blobStorage() []indy.Descriptor {
	return []indy.Descriptor{
		command(OpenBlobStorageReader, params(str("type"), doc("config")), intResult),
		command(OpenBlobStorageWriter, params(str("type"), doc("config")), intResult),
	}
}
