// Package taxonomy manages the category structure of a content library.
// Categories are plain directories under the two taxonomy parents (domains/
// for definition documents, teams/ for packages), discovered fresh from the
// filesystem on every call and created on demand with a seeded catalog index.
package taxonomy
