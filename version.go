package minirb

// Version of the minirb language and toolchain.
const Version = "0.2.0"
