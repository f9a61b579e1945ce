// Package tableio reads and writes tables.
//
// Formats:
//   - CSV: header row, one record per row. Cells matching a missing marker
//     ("", "NA", "N/A", "NaN", "null", case-insensitive) are missing. A column
//     is numeric when every present cell parses as a float, unless a Schema
//     forces its kind.
//   - JSON: columnar document encoded with sonic
//
//	{"columns": [{"name": "A", "kind": "numeric", "values": [1, null, 3]}]}
//
//   - XLSX: one worksheet read with excelize; first row is the header, cells
//     follow the CSV rules
//
// Input handling:
//   - gzip is detected from the magic bytes (klauspost/compress)
//   - non-UTF-8 text is detected with chardet and decoded to UTF-8
//   - the format comes from the file extension, falling back to mimetype
//     sniffing of the content
package tableio
