/*
Package weighted implements an ordered list of (value, weight) entries with
weighted random selection.

The probability of selecting entry i is its weight divided by the sum of all
positive weights. Entries with weight 0 are kept in the list but are never
selected. A List is not safe for concurrent use; callers sharing one across
goroutines must synchronize access themselves.
*/
package weighted
