/*
Package log provides structured logging for granary built on zerolog.

A single global logger is configured once at process startup via Init;
subsystems derive child loggers with WithComponent so every line carries
the component that emitted it.
*/
package log
