//go:build windows

package adeptkey

// CPUID stubs for the 32-bit calling convention: the output pointer is
// on the stack (0x8(%esp) once EBX is saved), and the stub pops its
// own argument on return.

var cpuid0Code = []byte{
	0x53,       //             push %ebx
	0x31, 0xc0, //             xor  %eax,%eax
	0x0f, 0xa2, //             cpuid
	0x8b, 0x44, 0x24, 0x08, // mov  0x8(%esp),%eax
	0x89, 0x18, //             mov  %ebx,0x0(%eax)
	0x89, 0x50, 0x04, //       mov  %edx,0x4(%eax)
	0x89, 0x48, 0x08, //       mov  %ecx,0x8(%eax)
	0x5b,             //       pop  %ebx
	0xc2, 0x04, 0x00, //       ret  $0x4
}

var cpuid1Code = []byte{
	0x53,       // push %ebx
	0x31, 0xc0, // xor  %eax,%eax
	0x40,       // inc  %eax
	0x0f, 0xa2, // cpuid
	0x5b, //       pop  %ebx
	0xc3, //       ret
}
