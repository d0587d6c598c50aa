/*
Package ingest is the scheduler's HTTP surface. Uploads are split into
fixed-size chunks and published to the broker queue; downloads resolve
the filename through the metadata directory, fetch every placed chunk
from its recorded worker and reassemble the byte stream in chunk order.
*/
package ingest
