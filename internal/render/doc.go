// Package render turns a proptree.Tree into indented YAML text.
//
// The output is a pure function of the tree and its iteration order:
// two-space indentation per level, comments emitted as "# text" lines above
// their key, list items on their own lines behind "- ", and scalars quoted
// only when they would otherwise be read back differently.
//
// Quoting picks single quotes when the value contains a double quote and
// double quotes otherwise. No escaping is performed, so a value holding both
// quote characters cannot be represented; callers that need well-formed
// output must parse the result back (see engine's generate phase).
package render
