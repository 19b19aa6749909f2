// Package render turns saved quotes into documents: the printable quote, the
// technical drawing of the unfolded sheet as PDF, and the same drawing as SVG
// for the detail page.
//
// Every renderer writes to an io.Writer and reads only the quote snapshot, so
// a document always matches what was quoted even after prices change.
package render
