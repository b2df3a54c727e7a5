// Package win32 holds every fixed-layout Windows structure and raw procedure
// call used by windisplay. Only typed values leave the package.
package win32
