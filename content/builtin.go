package content

import "github.com/c360studio/patternbook/catalog"

// Builtin returns the built-in catalog definitions: the design patterns
// and code smells shipped with the binary. Used when no content directory
// is configured, and as the reference data set in tests.
//
// Relations are maintained symmetrically here; the validator treats a
// one-way link as a warning, so edits to this list should keep both sides.
func Builtin() []*catalog.Entry {
	return []*catalog.Entry{
		{
			ID:       "abstract-factory",
			Category: catalog.CategoryPattern,
			Title:    "Abstract Factory",
			Summary:  "Provides an interface for creating families of related objects without specifying their concrete classes.",
			Related:  []string{"factory"},
		},
		{
			ID:       "factory",
			Category: catalog.CategoryPattern,
			Title:    "Factory",
			Summary:  "Centralizes object creation behind a method so callers depend on an interface instead of concrete constructors.",
			Related:  []string{"abstract-factory", "builder"},
			Example: &catalog.Example{
				Language: "php",
				Before: `$notifier = null;
if ($channel === 'email') {
    $notifier = new EmailNotifier($smtpHost);
} elseif ($channel === 'sms') {
    $notifier = new SmsNotifier($apiKey);
}`,
				After: `$notifier = NotifierFactory::make($channel);`,
			},
		},
		{
			ID:       "builder",
			Category: catalog.CategoryPattern,
			Title:    "Builder",
			Summary:  "Constructs complex objects step by step, separating construction from representation.",
			Related:  []string{"factory", "long-parameter-list"},
			Example: &catalog.Example{
				Language: "php",
				Before:   `$report = new Report('Q3', true, false, null, 'pdf', 42, 'en');`,
				After: `$report = Report::builder()
    ->title('Q3')
    ->format('pdf')
    ->language('en')
    ->build();`,
			},
		},
		{
			ID:       "strategy",
			Category: catalog.CategoryPattern,
			Title:    "Strategy",
			Summary:  "Encapsulates interchangeable algorithms behind a common interface so they can vary independently of the client.",
			Related:  []string{"hardcoded-conditional", "replace-conditional-with-polymorphism", "command"},
			Example: &catalog.Example{
				Language: "php",
				Before: `function shippingCost(Order $order): float {
    if ($order->carrier === 'ups') {
        return $order->weight * 1.5;
    }
    if ($order->carrier === 'fedex') {
        return $order->weight * 1.8 + 2.0;
    }
    return 5.0;
}`,
				After: `function shippingCost(Order $order, ShippingStrategy $strategy): float {
    return $strategy->costFor($order);
}`,
			},
		},
		{
			ID:       "decorator",
			Category: catalog.CategoryPattern,
			Title:    "Decorator",
			Summary:  "Attaches additional responsibilities to an object dynamically by wrapping it in objects sharing its interface.",
			Related:  []string{"composite", "adapter"},
		},
		{
			ID:       "composite",
			Category: catalog.CategoryPattern,
			Title:    "Composite",
			Summary:  "Composes objects into tree structures so clients treat individual objects and compositions uniformly.",
			Related:  []string{"decorator"},
		},
		{
			ID:       "adapter",
			Category: catalog.CategoryPattern,
			Title:    "Adapter",
			Summary:  "Converts the interface of a class into another interface clients expect, letting incompatible types collaborate.",
			Related:  []string{"decorator"},
		},
		{
			ID:       "command",
			Category: catalog.CategoryPattern,
			Title:    "Command",
			Summary:  "Encapsulates a request as an object, allowing requests to be queued, logged and undone.",
			Related:  []string{"strategy", "observer"},
		},
		{
			ID:       "observer",
			Category: catalog.CategoryPattern,
			Title:    "Observer",
			Summary:  "Defines a one-to-many dependency so that when one object changes state, all its dependents are notified.",
			Related:  []string{"command"},
		},

		{
			ID:       "magic-numbers",
			Category: catalog.CategorySmell,
			Title:    "Magic Numbers",
			Summary:  "Unexplained literal values scattered through the code; replace them with named constants.",
			Related:  []string{"primitive-obsession"},
			Example: &catalog.Example{
				Language: "php",
				Before: `if ($user->age >= 18 && $order->total > 49.99) {
    applyDiscount($order, 0.15);
}`,
				After: `if ($user->isAdult() && $order->total > Order::FREE_SHIPPING_THRESHOLD) {
    applyDiscount($order, Discount::LOYALTY_RATE);
}`,
			},
		},
		{
			ID:       "feature-envy",
			Category: catalog.CategorySmell,
			Title:    "Feature Envy",
			Summary:  "A method that is more interested in another object's data than its own; move the behavior next to the data.",
			Related:  []string{"tell-dont-ask"},
			Example: &catalog.Example{
				Language: "php",
				Before: `$total = $order->getSubtotal()
    + $order->getSubtotal() * $order->getTaxRate()
    - $order->getDiscount();`,
				After: `$total = $order->total();`,
			},
		},
		{
			ID:       "data-clumps",
			Category: catalog.CategorySmell,
			Title:    "Data Clumps",
			Summary:  "The same group of values travelling together through signatures and fields; extract them into their own type.",
			Related:  []string{"long-parameter-list", "primitive-obsession"},
		},
		{
			ID:       "long-parameter-list",
			Category: catalog.CategorySmell,
			Title:    "Long Parameter List",
			Summary:  "Signatures with many positional parameters are hard to call correctly; introduce parameter objects or a builder.",
			Related:  []string{"data-clumps", "builder"},
		},
		{
			ID:       "primitive-obsession",
			Category: catalog.CategorySmell,
			Title:    "Primitive Obsession",
			Summary:  "Using bare strings and numbers where a small domain type would carry meaning and validation.",
			Related:  []string{"magic-numbers", "data-clumps"},
		},
		{
			ID:       "hardcoded-conditional",
			Category: catalog.CategorySmell,
			Title:    "Hardcoded Conditional",
			Summary:  "Branching on type codes or configuration literals inline; each new case forces another edit to the same function.",
			Related:  []string{"strategy", "replace-conditional-with-polymorphism"},
		},
		{
			ID:       "mysterious-name",
			Category: catalog.CategorySmell,
			Title:    "Mysterious Name",
			Summary:  "Names that force the reader to look elsewhere to learn what a thing is or does; rename toward intent.",
			Related:  []string{"comments"},
		},
		{
			ID:       "comments",
			Category: catalog.CategorySmell,
			Title:    "Comments",
			Summary:  "Comments used as deodorant for unclear code; prefer extracting well-named functions over explaining bad ones.",
			Related:  []string{"mysterious-name"},
		},
		{
			ID:       "fail-fast",
			Category: catalog.CategorySmell,
			Title:    "Fail Fast",
			Summary:  "Validate inputs and fail at the boundary instead of letting bad state travel deep into the call stack.",
		},
		{
			ID:       "tell-dont-ask",
			Category: catalog.CategorySmell,
			Title:    "Tell, Don't Ask",
			Summary:  "Instead of interrogating an object's state and deciding for it, tell the object what to do.",
			Related:  []string{"feature-envy"},
			Example: &catalog.Example{
				Language: "php",
				Before: `if ($account->getBalance() >= $amount) {
    $account->setBalance($account->getBalance() - $amount);
}`,
				After: `$account->withdraw($amount);`,
			},
		},
		{
			ID:       "replace-conditional-with-polymorphism",
			Category: catalog.CategorySmell,
			Title:    "Replace Conditional with Polymorphism",
			Summary:  "Repeated switches over the same type code; move each branch into a subclass or strategy implementation.",
			Related:  []string{"strategy", "hardcoded-conditional"},
		},
	}
}
