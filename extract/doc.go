// Package extract builds training edge lists from a hypernym taxonomy.
//
// A Taxonomy holds direct child→parent links, typically read from a
// `child<TAB>parent` file. Extract selects every term of an allow-list that
// lies below a chosen root and links it to each allow-listed ancestor on any
// hypernym path from the root down. The result is the transitive-closure edge
// list a Poincaré embedding is trained on.
//
// Cycle detection uses depth-first search with three-color marking
// (White/Gray/Black); paths of finished terms are memoised.
package extract
