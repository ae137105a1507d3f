// Package ws tracks live subscriber connections and fans task events out
// to them. The Registry owns every connection handle exclusively; the
// Dispatcher decouples event emission from delivery through a bounded
// queue so a slow subscriber cannot stall the mutation path.
package ws
