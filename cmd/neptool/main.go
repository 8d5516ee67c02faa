// Command neptool inspects and edits CL3, STCM and STSC files without
// disturbing the bytes it does not understand.
package main

func main() {
	execute()
}
