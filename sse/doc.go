// Package sse serves streams to browsers over Server-Sent Events.
//
// Bridge turns any Observable into a gin handler. Each connection gets
// its own subscription and a bounded frame buffer; clients that read
// too slowly lose frames instead of stalling the stream.
package sse
