// Package catalog holds the fixed list of lunch venues.
//
// A Catalog is built once at process start and passed by pointer to every
// component that needs it. The same ordered list drives form generation,
// intake validation and tally naming, so venue keys are defined in exactly
// one place.
//
// Catalog files are YAML or CUE documents with a top-level venues list:
//
//	venues:
//	  - key: markthalle
//	    name: Markthalle
//
// Definition order is significant: it is the order venues appear on the
// vote form and the tie-break order for equal tally counts.
package catalog
