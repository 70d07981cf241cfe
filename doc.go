/*
Package mae reads and writes Maestro MAE structure files.

A MAE file is an ordered sequence of structure blocks. Each block
carries scalar properties (a title, charges, flags) and column-oriented
sub-blocks, conventionally one for atoms and one for bonds, in which
every property is a fixed-length column with an explicit null marker
per row. Property names carry a two-character type prefix that is
authoritative for the property's type: "b_" boolean, "i_" integer,
"r_" real, "s_" string.

The package exposes the file content as flat, host-friendly Records:

	records, err := mae.Read("benzoate.mae")
	if err != nil {
		// handle error
	}
	x := records[0].Atoms["r_x_coord"] // []any of float64 or mae.Absent

and writes them back losslessly:

	err = mae.Write(records, "benzoate-new.mae")

Undefined cells are represented by the Absent sentinel, never by a
zero value. Gzip-compressed files are read transparently and written
when the output path ends in ".gz" or ".maegz".

For streaming access, or to work with blocks directly, use NewReader
and NewWriter together with the block package; ToBlock and FromBlock
convert between the two representations. The arrow sub-package maps
indexed columns onto Apache Arrow record batches for columnar hosts.

Conversions are pure and independent per structure: a host may fan
conversion out across structures and collect results in order.
*/
package mae
