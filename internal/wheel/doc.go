// Package wheel implements the event-to-angle detection pipeline.
//
// The pipeline partitions an ordered DVS event stream into fixed-size
// slices, rasterizes each slice into a binary occupancy grid, finds the
// dominant straight line in the grid with a Hough voting transform, and
// reports the line's normal angle in degrees per slice.
//
// Data flows strictly forward: events -> slices -> grids -> line
// parameters -> angle series. Slices are independent of each other, so the
// pipeline may detect them concurrently and merge results by slice index.
package wheel
