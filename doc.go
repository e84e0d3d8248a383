// Package compose lays out and renders documents and images headlessly.
//
// # Overview
//
// Everything on a page is an Object: a Content (text, an image, a
// container) wrapped in a CSS-like box of padding, border and margin,
// optionally decorated with crops, shadows or filters. Objects measure
// themselves before drawing, so containers can arrange children without
// rendering them, and rendered images are memoized until the object is
// changed through WithMutation.
//
// # Quick Start
//
//	import "github.com/gogpu/compose"
//
//	photo, _ := compose.LoadImage("photo.jpg")
//	obj, _ := compose.NewImageObject(photo,
//		compose.WithPadding(compose.Uniform(8)),
//		compose.WithBackground(compose.White),
//		compose.WithBorder(1, compose.Black),
//	)
//	img, _ := obj.Render()
//	img.SavePNG("card.png")
//
// # Packages
//
// The engine is organized into:
//   - compose: Image, Object, box options, decorations, errors, logging
//   - font: font sources, families with fallback, shaping
//   - text and markup: styled text, line breaking, paragraphs, markup
//   - container, table, waterfall, datagraph: layouts built on Object
//   - decoration: crops, shadows, contours and color filters
//
// # Coordinate System
//
// Origin (0,0) is the top-left corner, X increases right and Y increases
// down. All sizes are whole pixels.
//
// # Errors
//
// Invalid arguments fail with a ConstructionError, content that cannot be
// arranged in the given space with a LayoutError and failures while
// drawing with a RenderError. Match them with errors.Is against
// ErrConstruction, ErrLayout and ErrRender.
package compose

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
