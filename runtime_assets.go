package promoform

import (
	"io/fs"

	"github.com/goliatone/go-promoform/pkg/renderers/vanilla"
)

// AssetsFS exposes the page stylesheet and mask script so Go applications can
// serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(promoform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
