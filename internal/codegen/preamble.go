package codegen

// runtimePreamble is the fixed C runtime every generated translation
// unit depends on: the tagged-union Value, a 1024-slot stack, its
// push/pop helpers, and the named op functions spec.md §6's
// Generated-C interface lists. It is emitted verbatim at the top of
// every generated file rather than as a separate compiled sibling,
// since kapilac emits one self-contained .c file per spec.md §4.5(i).
const runtimePreamble = `#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <stdbool.h>

#define STACK_CAPACITY 1024

typedef enum { VAL_INT, VAL_FLOAT, VAL_BOOL, VAL_STR } ValueTag;

typedef struct {
    ValueTag tag;
    union {
        long long i;
        double f;
        bool b;
        char *s;
    } as;
} Value;

static Value stack[STACK_CAPACITY];
static int sp = 0;

static void stack_init(void) {
    sp = 0;
}

static void push(Value v) {
    if (sp >= STACK_CAPACITY) {
        fprintf(stderr, "ದೋಷ: stack overflow\n");
        exit(1);
    }
    stack[sp++] = v;
}

static void push_int(long long i) {
    Value v; v.tag = VAL_INT; v.as.i = i;
    push(v);
}

static void push_float(double f) {
    Value v; v.tag = VAL_FLOAT; v.as.f = f;
    push(v);
}

static void push_bool(bool b) {
    Value v; v.tag = VAL_BOOL; v.as.b = b;
    push(v);
}

static void push_str(char *s) {
    Value v; v.tag = VAL_STR; v.as.s = s;
    push(v);
}

static Value pop(void) {
    if (sp <= 0) {
        fprintf(stderr, "ದೋಷ: stack underflow\n");
        exit(1);
    }
    return stack[--sp];
}

static Value peek(void) {
    if (sp <= 0) {
        fprintf(stderr, "ದೋಷ: stack empty\n");
        exit(1);
    }
    return stack[sp - 1];
}

static double as_number(Value v) {
    return v.tag == VAL_FLOAT ? v.as.f : (double)v.as.i;
}

static bool both_int(Value a, Value b) {
    return a.tag == VAL_INT && b.tag == VAL_INT;
}

static void add_op(void) {
    Value b = pop(), a = pop();
    if (both_int(a, b)) push_int(a.as.i + b.as.i);
    else push_float(as_number(a) + as_number(b));
}

static void sub_op(void) {
    Value b = pop(), a = pop();
    if (both_int(a, b)) push_int(a.as.i - b.as.i);
    else push_float(as_number(a) - as_number(b));
}

static void mul_op(void) {
    Value b = pop(), a = pop();
    if (both_int(a, b)) push_int(a.as.i * b.as.i);
    else push_float(as_number(a) * as_number(b));
}

static void div_op(void) {
    Value b = pop(), a = pop();
    if (as_number(b) == 0) {
        fprintf(stderr, "ದೋಷ: division by zero\n");
        exit(1);
    }
    push_float(as_number(a) / as_number(b));
}

static void mod_op(void) {
    Value b = pop(), a = pop();
    if ((long long)as_number(b) == 0) {
        fprintf(stderr, "ದೋಷ: division by zero\n");
        exit(1);
    }
    push_int((long long)as_number(a) % (long long)as_number(b));
}

static void lt_op(void)  { Value b = pop(), a = pop(); push_bool(as_number(a) <  as_number(b)); }
static void gt_op(void)  { Value b = pop(), a = pop(); push_bool(as_number(a) >  as_number(b)); }
static void lte_op(void) { Value b = pop(), a = pop(); push_bool(as_number(a) <= as_number(b)); }
static void gte_op(void) { Value b = pop(), a = pop(); push_bool(as_number(a) >= as_number(b)); }

static void eq_op(void) {
    Value b = pop(), a = pop();
    if (a.tag == VAL_STR && b.tag == VAL_STR) push_bool(strcmp(a.as.s, b.as.s) == 0);
    else if (a.tag == VAL_BOOL && b.tag == VAL_BOOL) push_bool(a.as.b == b.as.b);
    else push_bool(as_number(a) == as_number(b));
}

static void neq_op(void) {
    eq_op();
    Value r = pop();
    push_bool(!r.as.b);
}

static void and_op(void) { Value b = pop(), a = pop(); push_bool(a.as.b && b.as.b); }
static void or_op(void)  { Value b = pop(), a = pop(); push_bool(a.as.b || b.as.b); }
static void not_op(void) { Value a = pop(); push_bool(!a.as.b); }

static void dup_op(void)  { Value a = peek(); push(a); }
static void drop_op(void) { pop(); }
static void swap_op(void) {
    Value b = pop(), a = pop();
    push(b); push(a);
}

static void print_op(void) {
    Value a = pop();
    switch (a.tag) {
        case VAL_INT:   printf("%lld\n", a.as.i); break;
        case VAL_FLOAT: printf("%g\n", a.as.f); break;
        case VAL_BOOL:  printf("%s\n", a.as.b ? "ಸರಿ" : "ತಪ್ಪು"); break;
        case VAL_STR:   printf("%s\n", a.as.s); break;
    }
}
`
