package loader

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
)

//go:embed corelib.json
var coreLibraryJSON []byte

// coreLibrary returns the System types every compilation can reference
var coreLibrary = sync.OnceValue(func() *snapshot.File {
	f, err := snapshot.Decode(coreLibraryJSON, snapshot.FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("loader: embedded core library is invalid: %v", err))
	}
	f.Path = "System.Runtime.dll"
	return f
})
