/*
Package ports defines the driven ports (interfaces) for the requery engine.

The four capability ports (QueryExecutor, Judge, Refiner, Formatter) are the
narrow boundaries to external collaborators whose internal reasoning is out
of scope: query generation/execution and the three text-generation
capabilities. TranscriptStore decouples invocation archiving from a concrete
backend (memory, Redis).
*/
package ports
