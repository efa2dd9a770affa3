/*
Package rng defines the sample-source capability used throughout seedchain and
the range-mapping functions built on it.

A Source produces uniform 32-bit samples. The range functions turn those samples
into integers uniformly distributed over a half-open interval [min, max) without
modulo bias, by scaling the sample as a fixed-point fraction of its sample space:

	v = min + floor(length * sample / 2^bits)

The product is computed exactly (a 64-bit product for 32-bit ranges, a 128-bit
product for 64-bit ranges), so every output is a pure function of the samples
consumed and the requested range.
*/
package rng
