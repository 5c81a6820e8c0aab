package sieve_test

import (
	"fmt"

	"github.com/katalvlaran/primespectra/sieve"
)

// ExamplePrimes shows both prime conventions side by side.
func ExamplePrimes() {
	with2, _ := sieve.Primes(5)
	odd, _ := sieve.Primes(5, sieve.WithOddOnly())

	fmt.Println(with2)
	fmt.Println(odd)
	// Output:
	// [2 3 5 7 11]
	// [3 5 7 11 13]
}
