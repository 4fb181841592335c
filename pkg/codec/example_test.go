package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/Judith-olmand/persona/pkg/codec"
)

// ExampleRecordCodec demonstrates basic record encoding and decoding.
func ExampleRecordCodec() {
	c := codec.NewRecordCodec()

	encoded, err := c.Encode(codec.Record{Name: "Juan", Age: 30})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))

	record, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Name: %s\n", record.Name)
	fmt.Printf("Age: %d\n", record.Age)

	// Output:
	// Encoded 16 bytes
	// Name: Juan
	// Age: 30
}

// ExampleRecordCodec_Decode demonstrates classifying decode failures.
func ExampleRecordCodec_Decode() {
	c := codec.NewRecordCodec()

	_, err := c.Decode([]byte{0x01, 0x02})
	fmt.Println(errors.Is(err, codec.ErrTruncatedInput))

	_, err = c.Decode([]byte("XXXXnot a persona record"))
	fmt.Println(errors.Is(err, codec.ErrUnknownFormat))

	// Output:
	// true
	// true
}

// ExampleRecordCodec_emptyName shows that an empty name is a valid record.
func ExampleRecordCodec_emptyName() {
	c := codec.NewRecordCodec()

	encoded, err := c.Encode(codec.Record{Name: "", Age: 0})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))

	record, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Name is empty: %t\n", record.Name == "")

	// Output:
	// Encoded 12 bytes
	// Name is empty: true
}
