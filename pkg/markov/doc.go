/*
Package markov provides an in-memory, first-order Markov chain model over an
arbitrary comparable alphabet.

A Model is trained on whole sequences. Every distinct value becomes a node
whose weighted successor list records how often each other value (or the end
of the sequence) followed it. Generated sequences reproduce the local
transition probabilities of the training data.

All randomness comes from a caller-supplied rng.Source, so generation is fully
reproducible for a given source state. A Model is safe for concurrent use; the
sources passed to it are not.
*/
package markov
