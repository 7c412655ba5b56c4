//go:build windows

package adeptkey

// CPUID stubs for the 64-bit calling convention: the output pointer
// arrives in RCX, and RBX must be preserved across the CPUID.

var cpuid0Code = []byte{
	0x49, 0x89, 0xd8, // mov  %rbx,%r8
	0x49, 0x89, 0xc9, // mov  %rcx,%r9
	0x48, 0x31, 0xc0, // xor  %rax,%rax
	0x0f, 0xa2, //       cpuid
	0x4c, 0x89, 0xc8, // mov  %r9,%rax
	0x89, 0x18, //       mov  %ebx,0x0(%rax)
	0x89, 0x50, 0x04, // mov  %edx,0x4(%rax)
	0x89, 0x48, 0x08, // mov  %ecx,0x8(%rax)
	0x4c, 0x89, 0xc3, // mov  %r8,%rbx
	0xc3, //             retq
}

var cpuid1Code = []byte{
	0x53,             // push %rbx
	0x48, 0x31, 0xc0, // xor  %rax,%rax
	0x48, 0xff, 0xc0, // inc  %rax
	0x0f, 0xa2, //       cpuid
	0x5b, //             pop  %rbx
	0xc3, //             retq
}
