// Package novel implements the page-level heuristics for serialized novel
// reading sites: fetching and decoding a page, deriving the output file name
// from its title marker, filtering body paragraphs, and resolving the
// next-page link.
package novel
