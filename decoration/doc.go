// Package decoration provides ready-made compose.Decoration values: crops
// to rectangles, rounded rectangles, circles and squircles, drop shadows,
// contour outlines and color filters.
//
// Crops and filters transform the object's border box. Shadows and
// contours draw layers on the full image, margin included, so an object
// needs enough margin for them to show.
package decoration
