// Package filter implements the scope expressions used to narrow the vms
// that contribute to a sizing run.
//
// Grammar
//
//	expression  : term ( "or" term )* ;
//	term        : factor ( "and" factor )* ;
//	factor      : equality | "(" expression ")" ;
//	equality    : IDENTIFIER ( "=" | "!=" | "<" | "<=" | ">" | ">=" ) value
//	            | IDENTIFIER ( "~" | "!~" ) REGEX_LITERAL ;
//	value       : STRING | QUANTITY | BOOLEAN ;
//
//	IDENTIFIER    : [a-zA-Z_][a-zA-Z0-9_]* ;
//	REGEX_LITERAL : '/' ( '\\/' | . )*? '/' ;
//	STRING        : "'" (.*?) "'" | "\"" (.*?) "\"" ;
//	BOOLEAN       : "true" | "false" ;
//	QUANTITY      : [0-9]+(\.[0-9]+)? UNIT? ;
//	UNIT          : ( 'K' | 'M' | 'G' | 'T' ) ( 'B' | 'i' | 'iB' ) ;
//
// Identifiers and the values they take:
//
//	name, cluster, datacenter, power_state    string, = != ~ !~
//	template, excluded                       boolean, = !=
//	cpus                                     plain number
//	memory, provisioned, in_use, disk_capacity quantity, normalized to MiB
//
// Units are case-insensitive powers of 1024: 8GB, 8Gi and 8GiB are equal.
//
// Example:
//
//	cluster = 'prod' and (memory >= 8GB or name ~ /^db-/)
//
// ToSqlizer turns an expression into a squirrel condition with bound
// arguments, suitable for store.ByScope.
package filter
